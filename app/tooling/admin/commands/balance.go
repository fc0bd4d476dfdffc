package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance [address]",
	Short: "Print the projected balance for an address.",
	Args:  cobra.ExactArgs(1),
	Run:   balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}

func balanceRun(cmd *cobra.Command, args []string) {
	var resp struct {
		Address string `json:"address"`
		Balance uint64 `json:"balance"`
	}

	if err := get(fmt.Sprintf("%s/v1/balances/%s", publicURL, args[0]), &resp); err != nil {
		log.Fatal(err)
	}

	fmt.Println(resp.Balance)
}
