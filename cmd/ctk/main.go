// Command ctk is a small command-line front end over this module's AEAD
// packages: it seals and opens messages on stdin/stdout using a
// hex-encoded key, nonce and optional associated data supplied as flags.
package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	chachapoly "github.com/ctkcrypto/chachapoly"
)

var (
	keyHex   string
	nonceHex string
	aadHex   string
	variant  string
)

func pickAEAD() (chachapoly.AEAD, error) {
	switch variant {
	case "ietf", "":
		return chachapoly.NewChaChaPolyIETF(), nil
	case "x":
		return chachapoly.NewXChaChaPoly(), nil
	default:
		return nil, fmt.Errorf("unknown --variant %q (want \"ietf\" or \"x\")", variant)
	}
}

func decodeHexFlag(name, s string, want int) ([]byte, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	if len(b) != want {
		return nil, fmt.Errorf("--%s: want %d bytes, got %d", name, want, len(b))
	}
	return b, nil
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ctk",
		Short: "ctk seals and opens messages with ChaCha20-Poly1305 or XChaCha20-Poly1305",
	}

	root.PersistentFlags().StringVar(&keyHex, "key", "", "hex-encoded 32-byte key (required)")
	root.PersistentFlags().StringVar(&nonceHex, "nonce", "", "hex-encoded nonce (12 bytes for --variant ietf, 24 for --variant x)")
	root.PersistentFlags().StringVar(&aadHex, "aad", "", "hex-encoded associated data (optional)")
	root.PersistentFlags().StringVar(&variant, "variant", "ietf", "AEAD construction: ietf or x")

	root.AddCommand(newSealCmd())
	root.AddCommand(newOpenCmd())
	root.AddCommand(newSumCmd())

	return root
}

func newSealCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seal",
		Short: "Read plaintext from stdin, write ciphertext+tag to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			aead, err := pickAEAD()
			if err != nil {
				return err
			}

			key, err := decodeHexFlag("key", keyHex, aead.KeySize())
			if err != nil {
				return err
			}
			nonce, err := decodeHexFlag("nonce", nonceHex, aead.NonceSize())
			if err != nil {
				return err
			}
			aad, err := hex.DecodeString(aadHex)
			if err != nil {
				return fmt.Errorf("--aad: %w", err)
			}

			plaintext, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}

			dst := make([]byte, len(plaintext)+aead.Overhead())
			copy(dst, plaintext)

			n, err := aead.Seal(dst, key, nonce, len(plaintext), aad)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(dst[:n])
			return err
		},
	}
}

func newOpenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Read ciphertext+tag from stdin, write the recovered plaintext to stdout",
		RunE: func(cmd *cobra.Command, args []string) error {
			aead, err := pickAEAD()
			if err != nil {
				return err
			}

			key, err := decodeHexFlag("key", keyHex, aead.KeySize())
			if err != nil {
				return err
			}
			nonce, err := decodeHexFlag("nonce", nonceHex, aead.NonceSize())
			if err != nil {
				return err
			}
			aad, err := hex.DecodeString(aadHex)
			if err != nil {
				return fmt.Errorf("--aad: %w", err)
			}

			ciphertext, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}

			dst := make([]byte, len(ciphertext))
			copy(dst, ciphertext)

			n, err := aead.Open(dst, key, nonce, len(ciphertext), aad)
			if err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(dst[:n])
			return err
		},
	}
}

func newSumCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sum",
		Short: "Read a message from stdin, write its Poly1305 tag to stdout as hex",
		RunE: func(cmd *cobra.Command, args []string) error {
			mac := chachapoly.NewPoly1305()

			key, err := hex.DecodeString(keyHex)
			if err != nil {
				return fmt.Errorf("--key: %w", err)
			}

			msg, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("reading stdin: %w", err)
			}

			tag, err := mac.Sum(key, msg)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(tag))
			return nil
		},
	}
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "ctk:", err)
		os.Exit(1)
	}
}
