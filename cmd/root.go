/*
Copyright © 2019 NAME HERE <EMAIL ADDRESS>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/jensneuse/abstractlogger"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/wundergraph/cqir/pkg/compiler"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "cqir",
	Short: "cqir compiles GraphQL definitions into their runtime query representation",
	Long: `cqir compiles queries, mutations, subscriptions and fragments written for a relay style client
into CQIR trees. Fragment spreads become substitution slots that are filled at run time from the
modules the definitions are embedded in.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.cqir.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose enables debug logging")

	rootCmd.PersistentFlags().String("input-argument-name", compiler.DefaultConfig().InputArgumentName, "input-argument-name is the only argument of mutation and subscription fields")
	rootCmd.PersistentFlags().Bool("snake-case", false, "snake-case expects the runtime fields of the schema in snake_case, e.g. page_info")
	_ = viper.BindPFlag("input_argument_name", rootCmd.PersistentFlags().Lookup("input-argument-name"))
	_ = viper.BindPFlag("snake_case", rootCmd.PersistentFlags().Lookup("snake-case"))

	viper.SetDefault("cache_size", compiler.DefaultCacheSize)
	viper.SetDefault("concurrency", 0)
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}

		// Search config in home directory with name ".cqir" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".cqir")
	}

	viper.SetEnvPrefix("CQIR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil && verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func loadConfig() (compiler.Config, error) {
	config := compiler.DefaultConfig()
	if err := viper.Unmarshal(&config); err != nil {
		return config, err
	}
	return config, nil
}

func logger() (abstractlogger.Logger, error) {
	if verbose {
		zapLogger, err := zap.NewDevelopmentConfig().Build()
		if err != nil {
			return nil, err
		}
		return abstractlogger.NewZapLogger(zapLogger, abstractlogger.DebugLevel), nil
	}
	zapLogger, err := zap.NewProduction()
	if err != nil {
		return nil, err
	}
	return abstractlogger.NewZapLogger(zapLogger, abstractlogger.InfoLevel), nil
}
