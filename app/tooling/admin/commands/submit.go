package commands

import (
	"bytes"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"github.com/spf13/cobra"
)

var submitCmd = &cobra.Command{
	Use:   "submit [file]",
	Short: "Submit a candidate block from a JSON document.",
	Args:  cobra.ExactArgs(1),
	Run:   submitRun,
}

func init() {
	rootCmd.AddCommand(submitCmd)
}

func submitRun(cmd *cobra.Command, args []string) {
	body, err := os.ReadFile(args[0])
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/blocks", privateURL), "application/json", bytes.NewReader(body))
	if err != nil {
		log.Fatal(err)
	}
	defer resp.Body.Close()

	data, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Fatalf("status %d: %s", resp.StatusCode, string(data))
	}

	fmt.Println(string(data))
}
