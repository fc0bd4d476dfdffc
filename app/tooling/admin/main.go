// This program provides administrative access to a running indexer service.
package main

import "github.com/utxoledger/indexer/app/tooling/admin/commands"

func main() {
	commands.Execute()
}
