package forbiddencalls

import (
	"errors"
	"log"
	"os"
)

func ResolveOrPanic(code string) string {
	if code == "" {
		panic("empty short code") // want "panic is forbidden"
	}
	return code
}

func FlushOrDie(err error) {
	if err != nil {
		log.Fatal(err) // want "log.Fatal is forbidden outside main function"
	}
}

func ExitOnShutdown() {
	os.Exit(1) // want "os.Exit is forbidden outside main function"
}

func LogRedirect(code string) {
	log.Printf("redirecting %s", code) // want "log.Printf is forbidden, use zerolog"
}

func StartupFailure(err error) {
	log.Fatalf("startup: %v", err) // want "log.Fatalf is forbidden outside main function"
	log.Println("unreachable")     // want "log.Println is forbidden, use zerolog"
	os.Exit(2)                     // want "os.Exit is forbidden outside main function"
}

func ReturnsError() error {
	return errors.New("errors are returned, not raised")
}

type recorder struct{}

func (recorder) main() {
	os.Exit(0) // want "os.Exit is forbidden outside main function"
}
