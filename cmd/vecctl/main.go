// Command vecctl exercises the rawvec vector: it replays scripted operation
// scenarios with injected element failures, prints the growth schedule and
// times appends.
package main

func main() {
	execute()
}
