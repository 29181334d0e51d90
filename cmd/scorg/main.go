// Command scorg manages students and their timed-test scores.
package main

import "github.com/mesh-intelligence/scorg/internal/cli"

func main() {
	cli.Execute()
}
