package main

import "simple_cart/internal/app/cartApp"

func main() {
	cartApp.Run()
}
