// Package commands contains the admin commands for the indexer service.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var (
	publicURL  string
	privateURL string
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&publicURL, "url", "u", "http://localhost:8080", "Url of the public API.")
	rootCmd.PersistentFlags().StringVar(&privateURL, "private-url", "http://localhost:9080", "Url of the private API.")
}

var rootCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administer a running indexer service",
}

// Execute runs the selected command against the service.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// get performs a GET request and decodes the JSON response into val.
func get(url string, val any) error {
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(data))
	}

	return json.NewDecoder(resp.Body).Decode(val)
}
