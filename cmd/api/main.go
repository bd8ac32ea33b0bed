package main

func main() {
	cfg := LoadConfiguration()

	a := NewApp(cfg)
	defer a.cleanup()

	a.InitializeServer()
	a.StartServer()
}
