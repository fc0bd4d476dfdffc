package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var heightCmd = &cobra.Command{
	Use:   "height",
	Short: "Print the current chain height.",
	Run:   heightRun,
}

func init() {
	rootCmd.AddCommand(heightCmd)
}

func heightRun(cmd *cobra.Command, args []string) {
	var resp struct {
		Height uint64 `json:"height"`
	}

	if err := get(fmt.Sprintf("%s/v1/chain/height", publicURL), &resp); err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.Height)
}
