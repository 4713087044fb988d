// Command alarm-report raises or clears one alarm.
package main

import "github.com/oshokin/alarm-relay/cmd/alarm-report/cmd"

func main() {
	cmd.Execute()
}
