// Copyright 2024 The go-creditline Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"testing"
)

func TestLogger(t *testing.T) {
	Error("test error level")
	Errorf("test error level %s", "format")
	Errorw("test error level", "ctx", "error")
	Info("test info level")
	Infof("test info level %s", "format")
	Infow("test info level", "ctx", "info", "hello", "world")
	Debug("test debug level (closed)")
	OpenDebug()
	Debug("test debug level (opened)")
	CloseDebug()
	Warn("test warn level")
	Warnf("test warn level %s", "format")
	Warnw("test warn level", "ctx", "warn")
}
