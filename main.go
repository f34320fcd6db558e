package main

import "stock-matcher/cmd"

func main() {
	cmd.Execute()
}
