// Command rekey re-encrypts every held private key in a persistent store under a new
// master key. Run it with the server stopped.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/AlexZinkM/eth-wallet/internal/config"
	"github.com/AlexZinkM/eth-wallet/internal/crypto"
	"github.com/AlexZinkM/eth-wallet/internal/logger"
	"github.com/AlexZinkM/eth-wallet/internal/store"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	dryRunFlag     = "dry-run"
	passphraseFlag = "passphrase"
	newSaltFlag    = "new-salt"
)

type options struct {
	dryRun     bool
	passphrase bool
	newSalt    string
}

func main() {
	if err := newCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rekey",
		Short: "Re-encrypt held wallet keys under a new master key",
		Long: `Prompts for the current and the new 64 hex character master keys and re-encrypts
every record of the store selected by STORE_BACKEND (badger or redis).

With --passphrase the prompts take passphrases instead. The current one is derived with
ENCRYPTION_SALT, the new one with --new-salt (ENCRYPTION_SALT when unset).`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				opts options
				err  error
			)
			if opts.dryRun, err = cmd.Flags().GetBool(dryRunFlag); err != nil {
				return err
			}
			if opts.passphrase, err = cmd.Flags().GetBool(passphraseFlag); err != nil {
				return err
			}
			if opts.newSalt, err = cmd.Flags().GetString(newSaltFlag); err != nil {
				return err
			}
			return run(cmd.Context(), opts)
		},
	}
	cmd.Flags().Bool(dryRunFlag, false, "check that every record decrypts without writing anything")
	cmd.Flags().Bool(passphraseFlag, false, "prompt for passphrases and derive keys with scrypt")
	cmd.Flags().String(newSaltFlag, "", "salt for the new passphrase (default ENCRYPTION_SALT)")
	return cmd
}

func run(ctx context.Context, ro options) error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	lg, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer lg.Sync()

	opts := cfg.StoreOptions()
	if !opts.Persistent() {
		return errors.New("STORE_BACKEND must be badger or redis: a memory store has nothing to rekey")
	}

	var oldSalt, newSalt string
	if ro.passphrase {
		oldSalt, newSalt = cfg.EncryptionSalt, ro.newSalt
		if newSalt == "" {
			newSalt = oldSalt
		}
		if oldSalt == "" {
			return errors.New("ENCRYPTION_SALT is required with --passphrase")
		}
	}

	oldKey, err := promptKey("Current encryption key: ", oldSalt)
	if err != nil {
		return err
	}
	defer clear(oldKey)
	newKey, err := promptKey("New encryption key: ", newSalt)
	if err != nil {
		return err
	}
	defer clear(newKey)

	oldCipher, err := crypto.New(oldKey)
	if err != nil {
		return err
	}
	newCipher, err := oldCipher.RotateKey(newKey)
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer st.Close()

	n, err := store.ReEncryptAll(ctx, st, oldCipher, newCipher, ro.dryRun)
	if err != nil {
		lg.Error("rekey failed", zap.Int("rewritten", n), zap.Error(err))
		return err
	}

	lg.Info("rekey finished",
		zap.String("backend", opts.Backend),
		zap.Int("records", n),
		zap.Bool("dry_run", ro.dryRun))
	return nil
}

// promptKey reads a master key without echo. Caller must zero it after use.
func promptKey(prompt, salt string) ([]byte, error) {
	secret, err := config.PromptSecret(prompt)
	if err != nil {
		return nil, err
	}
	defer clear(secret)

	return keyFromSecret(secret, salt)
}

// keyFromSecret parses a hex key, or derives one from a passphrase when salt is set
func keyFromSecret(secret []byte, salt string) ([]byte, error) {
	if salt == "" {
		return crypto.KeyFromHex(string(secret))
	}
	return crypto.DeriveKey(secret, []byte(salt))
}
