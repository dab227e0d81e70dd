package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/cardkit/hsmauth/pkg/hsmauth"
)

func main() {
	reader := flag.String("reader", "", "substring of the reader name to use (default: first reader with the applet)")
	verbose := flag.Bool("verbose", false, "dump raw frames on stderr")
	flag.Parse()

	// --- 1. Hardware Setup ---
	session := connectToApplet(*reader)

	defer func() {
		if err := session.Close(); err != nil {
			log.Printf("Warning: Failed to close session: %v", err)
		}
	}()

	// --- 2. Logic Setup ---
	client := hsmauth.NewClient(session)
	if *verbose {
		client.Trace = os.Stderr
	}

	// --- 3. Execution Flow ---
	step1ShowVersion(client)
	creds := step2ListCredentials(client)
	step3ShowRetries(client, creds)

	fmt.Println("\n>> Demo Finished Successfully")
}

// =========================================================================
// Helper Functions
// =========================================================================

// connectToApplet finds a reader and opens a session with the applet
// selected.
func connectToApplet(wanted string) *hsmauth.Session {
	readers, err := hsmauth.ListReaders()
	if err != nil {
		log.Fatalf("Error listing readers: %s", err)
	}
	if len(readers) == 0 {
		log.Fatal("No smart card reader found.")
	}

	session, err := hsmauth.Connect(wanted)
	if err != nil {
		log.Fatalf("Error connecting: %s", err)
	}

	fmt.Printf(">> Using reader: %s\n", session.Reader)
	return session
}

func step1ShowVersion(client *hsmauth.Client) {
	fmt.Println("\n=============================================")
	fmt.Println(" Step 1: APPLET VERSION")
	fmt.Println("=============================================")

	version, err := client.GetVersion()
	if err != nil {
		log.Printf("(!) Version query failed: %v", err)
		return
	}
	fmt.Printf(">> Applet version: %s\n", version)
}

func step2ListCredentials(client *hsmauth.Client) []hsmauth.Credential {
	fmt.Println("\n=============================================")
	fmt.Println(" Step 2: STORED CREDENTIALS")
	fmt.Println("=============================================")

	creds, err := client.ListCredentials()
	if err != nil {
		log.Printf("(!) List query failed: %v", err)
		return nil
	}

	if len(creds) == 0 {
		fmt.Println(">> Credential store is empty.")
		return nil
	}

	for i, cred := range creds {
		fmt.Printf(" [%d/%d] %-20s algorithm=%-7s touch=%-8s retries=%d\n",
			i+1, len(creds), cred.Label, cred.Algorithm, cred.Touch, cred.Counter)
	}
	return creds
}

func step3ShowRetries(client *hsmauth.Client, creds []hsmauth.Credential) {
	fmt.Println("\n=============================================")
	fmt.Println(" Step 3: MANAGEMENT KEY RETRIES")
	fmt.Println("=============================================")

	retries, err := client.GetManagementKeyRetries()
	if err != nil {
		log.Printf("(!) Retry query failed: %v", err)
		return
	}
	fmt.Printf(">> Management key retries left: %d\n", retries)

	if len(creds) > 0 {
		fmt.Printf(">> Requesting a challenge for %q...\n", creds[0].Label)
		challenge, err := client.GetChallenge(creds[0].Label)
		if err != nil {
			log.Printf("(!) Challenge query failed: %v", err)
			return
		}
		fmt.Printf(">> Challenge: %X\n", challenge)
	}
}
