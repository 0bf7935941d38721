package cmd

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Embedded default configuration. The issuer grammars ship compiled in; a
// config file only needs entries for the patterns being overridden.
const defaultConfigYAML = `
statement:
# Override compiled-in grammars per issuer and account type, for example:
#   TD_CC:
#     patterns:
#       transaction: ^([A-Z]{3}\s\d{1,2})\s+([A-Z]{3}\s\d{1,2})\s+(.+?)\s+(-?\$?[\d,]+\.\d{2})$
#   RBC_CHEQUING:
#     patterns:
#       deposit: (?i)deposit|payroll|interest|refund|rebate
`

var (
	cfgFile string
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "mapleparse [filename]",
		Short: "Parse Canadian bank statement PDFs",
		Long:  `mapleparse turns bank statement PDFs into structured, categorized transactions`,
		Args:  cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) == 1 {
				viper.Set("target", args[0])
				runParse(parseCmd, []string{})
				return
			}
			cmd.Help()
		},
	}
)

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogging)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default is ./.mapleparse.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
}

func initLogging() {
	if !verbose {
		log.SetOutput(io.Discard)
	} else {
		log.SetFlags(log.Ltime | log.Lmsgprefix)
		log.SetPrefix("INFO: ")
	}
}

func initConfig() {
	// Pick up DATABASE_URL and friends from a local .env when present
	_ = godotenv.Load()

	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Search for config in current directory and home directory
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(".")  // First check current directory
		viper.AddConfigPath(home) // Then check home directory
		viper.SetConfigName(".mapleparse")
		viper.SetConfigType("yaml")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file found, use embedded default configuration
			if err := viper.ReadConfig(bytes.NewBufferString(defaultConfigYAML)); err != nil {
				fmt.Printf("Error loading embedded configuration: %v\n", err)
				os.Exit(1)
			}
		} else {
			fmt.Printf("Error reading config file: %v\n", err)
			os.Exit(1)
		}
	}
}
