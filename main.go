package main

import "github.com/EO-DataHub/eodhp-user-console/cmd"

func main() {
	cmd.Execute()
}
