package main

import "github.com/nfrund/petshop/cmd/petshop/cmd"

func main() {
	cmd.Execute()
}
