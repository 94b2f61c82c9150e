// Command ucare is a thin command line wrapper over the SDK, handy for
// poking the Uploadcare API from a shell. Credentials come from the
// UCARE_SECRET_KEY / UCARE_PUBLIC_KEY environment variables or a config
// file (secret_key / public_key keys).
package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uploadcare-community/ucare_sdk_go/pkg/ucare"
)

var (
	cfgFile    string
	verbose    bool
	signedAuth bool
	apiVersion string

	cfg = viper.New()
	log = logrus.New()
)

var rootCmd = &cobra.Command{
	Use:   "ucare",
	Short: "Uploadcare API command line client",
	Long:  "A command line client for the Uploadcare REST and Upload APIs.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.ucare.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&signedAuth, "sign", true, "use signature based authentication")
	rootCmd.PersistentFlags().StringVar(&apiVersion, "api-version", string(ucare.APIv06), "REST API version (v0.5 or v0.6)")
}

func initConfig() error {
	log.SetLevel(logrus.InfoLevel)
	if verbose {
		log.SetLevel(logrus.DebugLevel)
	}

	if cfgFile != "" {
		cfg.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			cfg.AddConfigPath(home)
			cfg.SetConfigName(".ucare")
			cfg.SetConfigType("yaml")
		}
	}
	cfg.SetEnvPrefix("ucare")
	cfg.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	cfg.AutomaticEnv()

	if err := cfg.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			return errors.Wrap(err, "read config file")
		}
	} else {
		log.WithField("file", cfg.ConfigFileUsed()).Debug("loaded config file")
	}
	return nil
}

func apiCreds() (ucare.APICreds, error) {
	creds := ucare.APICreds{
		SecretKey: cfg.GetString("secret_key"),
		PublicKey: cfg.GetString("public_key"),
	}
	if creds.SecretKey == "" || creds.PublicKey == "" {
		return ucare.CredsFromEnv()
	}
	return creds, nil
}

func newRestClient() (*ucare.RestClient, error) {
	creds, err := apiCreds()
	if err != nil {
		return nil, err
	}
	return ucare.NewRestClient(ucare.RestConfig{
		SignBasedAuth: signedAuth,
		APIVersion:    ucare.RestAPIVersion(apiVersion),
	}, creds, ucare.WithLogger(log))
}

func newUploadClient() (*ucare.UploadClient, error) {
	creds, err := apiCreds()
	if err != nil {
		return nil, err
	}
	return ucare.NewUploadClient(ucare.UploadConfig{
		SignBasedUpload: signedAuth,
	}, creds, ucare.WithLogger(log))
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
