package main

import "github.com/jobsift/jobsift-server/cmd/jobsiftctl/cmd"

func main() {
	cmd.Execute()
}
