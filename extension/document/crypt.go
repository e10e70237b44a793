// crypt.go implements "anondocs encrypt" and "anondocs decrypt", which
// change a stored document's protection in place.

package document

import (
	"fmt"

	"github.com/jpl-au/anondocs/cmd"
	"github.com/jpl-au/anondocs/internal/log"
	"github.com/jpl-au/anondocs/internal/progress"
	"github.com/spf13/cobra"
)

func (e *Extension) newEncryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encrypt <id>",
		Short: "Encrypt a document with a password",
		Long: `Encrypt a plaintext document in place. The password cannot be
recovered: without it the content is lost. Passwords need at least 8
characters.`,
		Args: cobra.ExactArgs(1),
		RunE: e.runEncrypt,
	}
}

func (e *Extension) runEncrypt(c *cobra.Command, args []string) error {
	id := args[0]
	b := log.Event("document:encrypt", "encrypt").Author(cmd.Author()).Document(id)

	pw, err := cmd.NewPassword()
	if err != nil {
		return cmd.Fail(b, err)
	}
	_, err = progress.Run("Encrypting", func() (struct{}, error) {
		return struct{}{}, e.svc.Encrypt(c.Context(), id, pw)
	})
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("encrypt %q: %w", id, err))
	}
	b.Write(nil)

	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Encrypted %s\n", id)
	}
	return cmd.PrintJSON(map[string]any{"id": id, "encrypted": true})
}

func (e *Extension) newDecryptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decrypt <id>",
		Short: "Remove encryption from a document",
		Long:  `Permanently decrypt a document in place, storing its content as plaintext.`,
		Args:  cobra.ExactArgs(1),
		RunE:  e.runDecrypt,
	}
}

func (e *Extension) runDecrypt(c *cobra.Command, args []string) error {
	id := args[0]
	b := log.Event("document:decrypt", "decrypt").Author(cmd.Author()).Document(id)

	pw, err := cmd.Password(fmt.Sprintf("Password for %s: ", id))
	if err != nil {
		return cmd.Fail(b, err)
	}
	_, err = progress.Run("Decrypting", func() (struct{}, error) {
		return struct{}{}, e.svc.Decrypt(c.Context(), id, pw)
	})
	if err != nil {
		return cmd.Fail(b, fmt.Errorf("decrypt %q: %w", id, err))
	}
	b.Write(nil)

	if !cmd.JSON() {
		fmt.Fprintf(cmd.Out(), "Decrypted %s\n", id)
	}
	return cmd.PrintJSON(map[string]any{"id": id, "encrypted": false})
}
