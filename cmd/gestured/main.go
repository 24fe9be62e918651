// Command gestured turns multi-finger touchpad input into gesture actions.
package main

func main() {
	Execute()
}
