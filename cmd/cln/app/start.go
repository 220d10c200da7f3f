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

package app

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/creditline/go-creditline/log"
	"github.com/creditline/go-creditline/node"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the node with config",
	Long: `Start a trust line ledger node with the specified configuration,
the node recovers the trust lines from its database and begins
serving ledger operations.`,
	Run: func(cmd *cobra.Command, args []string) {
		// read in config file
		if cfgFile == "" {
			log.Fatal(errors.New("config file not provided"))
		}
		v := viper.New()
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			log.Fatal(err)
		}
		// init node config from viper
		c, err := node.NewConfig(v)
		if err != nil {
			log.Fatal(err)
		}
		if debug {
			log.OpenDebug()
		}
		n := node.NewNode(c)
		n.Start()
	},
}

var (
	cfgFile string
	debug   bool
)

func init() {
	startCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file of the node")
	startCmd.MarkFlagRequired("config")
	startCmd.Flags().BoolVarP(&debug, "debug", "d", false, "enable debug logging")
	rootCmd.AddCommand(startCmd)
}
