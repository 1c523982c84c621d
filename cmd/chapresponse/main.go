package main

import (
	"bufio"
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/vitalvas/gochap"
	"github.com/vitalvas/gochap/pkg/digest"
	chaplog "github.com/vitalvas/gochap/pkg/log"
)

func readSecret() (string, error) {
	scanner := bufio.NewScanner(os.Stdin)

	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()), nil
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("error reading input: %w", err)
	}

	return "", nil
}

func main() {
	algorithm := flag.String("algorithm", "", "Digest algorithm name (default: policy default, else md5)")
	identifier := flag.Uint("id", 1, "CHAP identifier octet (0-255)")
	secret := flag.String("secret", "", "Shared secret (read from stdin when omitted)")
	challengeHex := flag.String("challenge", "", "Challenge bytes in hex")
	verifyHex := flag.String("verify", "", "Expected response in hex; verify instead of printing")
	policyPath := flag.String("policy", "", "Algorithm policy file (YAML or JSON)")
	list := flag.Bool("list", false, "List available algorithms and exit")
	debug := flag.Bool("debug", false, "Enable debug logging of the session lifecycle")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s -challenge <hex> [-algorithm <name>] [-id <0-255>] [-secret <secret>]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nThe shared secret is read from stdin when -secret is omitted.\n")
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  echo 'secret' | %s -challenge 30313233343536373839616263646566\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -algorithm sha256 -id 7 -secret secret -challenge deadbeef\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -secret secret -challenge deadbeef -verify 1af41a... && echo ok\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -policy policy.yaml -list\n", os.Args[0])
	}

	flag.Parse()

	registry, err := digest.NewDefault()
	if err != nil {
		log.Fatalf("Failed to load algorithms: %v", err)
	}

	var policy *digest.Policy

	if *policyPath != "" {
		source := &digest.FileSource{Path: *policyPath}
		defer source.Close()

		policy, err = source.Load(context.Background())
		if err != nil {
			log.Fatalf("Failed to load policy: %v", err)
		}

		registry, err = registry.WithPolicy(policy)
		if err != nil {
			log.Fatalf("Failed to apply policy: %v", err)
		}
	}

	if *list {
		for _, name := range registry.Names() {
			alg, _ := registry.Lookup(name)
			fmt.Printf("%s (%d-byte response)\n", name, alg.Size())
		}

		return
	}

	if *challengeHex == "" {
		fmt.Fprintf(os.Stderr, "Error: -challenge is required\n\n")
		flag.Usage()
		os.Exit(1)
	}

	if *identifier > 255 {
		fmt.Fprintf(os.Stderr, "Error: -id must be between 0 and 255\n\n")
		flag.Usage()
		os.Exit(1)
	}

	challenge, err := hex.DecodeString(*challengeHex)
	if err != nil {
		log.Fatalf("Failed to decode challenge: %v", err)
	}

	if len(challenge) < gochap.MinChallengeLength || len(challenge) > gochap.MaxChallengeLength {
		log.Fatalf("Challenge must be between %d and %d bytes, got %d", gochap.MinChallengeLength, gochap.MaxChallengeLength, len(challenge))
	}

	name := *algorithm
	if name == "" {
		name = "md5"
		if policy != nil && policy.Default != "" {
			name = policy.Default
		}
	}

	alg, ok := registry.Lookup(name)
	if !ok {
		log.Fatalf("Unknown algorithm %q (available: %s)", name, strings.Join(registry.Names(), ", "))
	}

	secretValue := *secret
	if secretValue == "" {
		secretValue, err = readSecret()
		if err != nil {
			log.Fatalf("Failed to read secret: %v", err)
		}
	}

	if *verifyHex != "" {
		expected, err := hex.DecodeString(*verifyHex)
		if err != nil {
			log.Fatalf("Failed to decode expected response: %v", err)
		}

		if gochap.Verify(alg, byte(*identifier), []byte(secretValue), challenge, expected) {
			fmt.Println("Response verified")
			os.Exit(0)
		}

		fmt.Println("Response mismatch")
		os.Exit(1)
	}

	logger := chaplog.Nop()
	if *debug {
		logger = chaplog.NewLoggerWithLevel("debug")
	}

	session, err := gochap.NewSession(alg, gochap.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create session: %v", err)
	}
	defer session.Close()

	session.Update([]byte{byte(*identifier)})
	session.Update([]byte(secretValue))
	session.Update(challenge)

	fmt.Println(hex.EncodeToString(session.Respond()))
}
