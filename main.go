package main

import "github.com/DRAGVAN/siteVisitProject/cmd"

func main() {
	cmd.Execute()
}
