package main

import "github.com/manifest-network/sebakscan/cmd/sebakscan"

func main() {
	sebakscan.Execute()
}
