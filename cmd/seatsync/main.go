// Package main is the entry point for SeatSync, the consolidated seat
// billing reconciler for MSP providers.
package main

func main() {
	Execute()
}
