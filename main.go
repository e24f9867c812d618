// main.go
package main

import "english-hub/cmd"

func main() {
	cmd.Execute()
}
