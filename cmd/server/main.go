package main

func main() {
	srv := NewServer()
	defer srv.Shutdown()
	srv.Run()
}
