// Command godownctl inspects and edits a godown data file.
package main

func main() {
	execute()
}
