// Command alarm-listener receives alarm events over gRPC.
package main

import "github.com/oshokin/alarm-relay/cmd/alarm-listener/cmd"

func main() {
	cmd.Execute()
}
