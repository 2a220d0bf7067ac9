package main

import "github.com/github/conan-dependency-submission/cmd/conan-submit/internal"

func main() {
	internal.Execute()
}
