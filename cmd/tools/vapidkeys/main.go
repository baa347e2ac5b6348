// cmd/tools/vapidkeys/main.go
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	webpush "github.com/SherClockHolmes/webpush-go"

	"github.com/aikya/companion/internal/push"
)

func main() {
	envFormat := flag.Bool("env", false, "Print the keys as .env assignments")
	flag.Parse()

	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		log.Fatalf("Failed to generate VAPID keys: %v", err)
	}

	// The browser must accept the public key as an application server key.
	if _, err := push.DecodeApplicationServerKey(publicKey); err != nil {
		log.Fatalf("Generated public key is unusable: %v", err)
	}

	if *envFormat {
		fmt.Fprintf(os.Stdout, "VAPID_PUBLIC_KEY=%s\nVAPID_PRIVATE_KEY=%s\n", publicKey, privateKey)
		return
	}
	fmt.Fprintf(os.Stdout, "Public key (push.vapid_public_key):\n  %s\n", publicKey)
	fmt.Fprintf(os.Stdout, "Private key (VAPID_PRIVATE_KEY, keep secret):\n  %s\n", privateKey)
}
