package main

import "github.com/robin11110000/niet2code/cmd"

func main() {
	cmd.Execute()
}
