package main

import "github.com/yorozuya-cybersecurity/qagate/pkg/cli"

func main() {
	cli.Execute()
}
