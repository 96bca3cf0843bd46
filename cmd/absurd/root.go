package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tatianab/absurd-path/internal/config"
	"github.com/tatianab/absurd-path/internal/engine"
	"github.com/tatianab/absurd-path/internal/stories"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "absurd",
	Short: "A small choose-your-own-adventure engine",
	Long: `absurd plays branching stories written as YAML or JSON documents.
Without --content it plays the built-in demo, "The Tower That Isn't There".`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.absurd.yaml)")
	rootCmd.PersistentFlags().StringP("content", "c", "", "story file (YAML or JSON); the demo story is used when empty")
	rootCmd.PersistentFlags().String("save_dir", "", "directory holding named saves")
	_ = viper.BindPFlag("content", rootCmd.PersistentFlags().Lookup("content"))
	_ = viper.BindPFlag("save_dir", rootCmd.PersistentFlags().Lookup("save_dir"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName(".absurd")
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadSettings reads the environment and applies config file and flag overrides.
func loadSettings() (*config.Config, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}
	if v := viper.GetString("content"); v != "" {
		cfg.ContentPath = v
	}
	if v := viper.GetString("save_dir"); v != "" {
		cfg.SaveDir = v
	}
	if v := viper.GetString("http_addr"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := viper.GetString("db_path"); v != "" {
		cfg.DBPath = v
	}
	if v := viper.GetString("gemini_model"); v != "" {
		cfg.GeminiModel = v
	}
	return cfg, nil
}

func loadEngine(cfg *config.Config) (*engine.Engine, error) {
	doc, err := stories.Load(cfg.ContentPath)
	if err != nil {
		return nil, err
	}
	return engine.NewEngine(engine.BuildContent(doc)), nil
}
