/*
Package hsmauth implements the host side of the YubiHSM Auth smart-card
applet protocol: storing and managing authentication credentials on the
card, and deriving the session keys that secure a channel to a hardware
security module.

# Fundamentals

The applet speaks plain ISO 7816 short frames over T=1. Every operation is
one synchronous exchange: the host sends a command whose data field is a
sequence of tag-length-value records, the card answers with a payload and a
2-byte status word. There is no secure messaging, chaining or continuation
at this layer; the session keys the applet derives are used by the caller
on a separate channel to the HSM.

# Credentials

A credential is addressed by its label, a printable string of 1 to 64
bytes that is unique on the card. Each credential carries an algorithm
(AES-128 challenge-response or ECDH over P-256), a touch policy, a
credential password authorizing its use, and an 8-attempt retry counter.
Store, delete and management-key operations are gated by the 16-byte
management key; a factory-fresh device uses DefaultManagementKey.

# Session key derivation

CalculateSessionKeys performs the challenge-response half of a
SCP03-style handshake: the host supplies the credential label, the
16-byte context (host challenge plus card challenge), and for asymmetric
credentials the HSM's ephemeral public key and cryptogram. The card
returns exactly three 16-byte keys: encryption, command-MAC and
response-MAC.

# Usage

	session, err := hsmauth.Connect("Yubico")
	if err != nil {
	    log.Fatal(err)
	}
	defer session.Close()

	client := hsmauth.NewClient(session)

	creds, err := client.ListCredentials()
	if err != nil {
	    log.Fatal(err)
	}
	for _, cred := range creds {
	    fmt.Printf("%s (%s, retries %d)\n", cred.Label, cred.Algorithm, cred.Counter)
	}

Failures carry a typed *Error. A wrong password or management key reports
the remaining retry count:

	err := client.DeleteCredential(key, "backup-hsm")
	if retries, ok := hsmauth.WrongCredentialRetries(err); ok {
	    fmt.Printf("wrong management key, %d attempts left\n", retries)
	}
*/
package hsmauth
