package commands

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"
)

var rollbackCmd = &cobra.Command{
	Use:   "rollback [height]",
	Short: "Revert the chain to the specified height.",
	Long: `Revert the chain to the specified height, discarding every block above it.
The balance projection is rebuilt from the remaining unspent outputs, so keep
rollback depth within operational policy (a few thousand blocks) to keep the
rebuild cost predictable.`,
	Args: cobra.ExactArgs(1),
	Run:  rollbackRun,
}

func init() {
	rootCmd.AddCommand(rollbackCmd)
}

func rollbackRun(cmd *cobra.Command, args []string) {
	height, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		log.Fatal(err)
	}

	body, err := json.Marshal(struct {
		Height uint64 `json:"height"`
	}{
		Height: height,
	})
	if err != nil {
		log.Fatal(err)
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/chain/rollback", privateURL), "application/json", bytes.NewReader(body))
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
