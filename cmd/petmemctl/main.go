// Command petmemctl administra una instancia de pet-memorial por HTTP:
// lista, borra, purga y exporta memoriales con la sesión admin.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"text/tabwriter"
	"time"

	"pet-memorial/internal/domain/admin"
	"pet-memorial/internal/platform/httpclient"

	"github.com/google/uuid"
)

const usage = `usage: petmemctl [flags] <command> [args]

commands:
  list                  lista todos los memoriales vigentes
  delete <id>           borra un memorial
  purge                 borra los expirados
  export <file.xlsx>    descarga la planilla de memoriales
  hash-passphrase <p>   imprime el hash para PETMEM_ADMIN_PASSPHRASE_HASH
`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type petRow struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("petmemctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fmt.Fprintln(stderr, "\nflags:")
		fs.PrintDefaults()
	}

	baseURL := fs.String("url", envOr("PETMEM_URL", "http://localhost:8080"), "base URL de la API")
	// uno nuevo por ejecución: la sesión admin queda atada a este id
	clientID := fs.String("client", envOr("PETMEM_CLIENT_ID", uuid.NewString()), "id de cliente (X-Client-ID)")
	passphrase := fs.String("passphrase", os.Getenv("PETMEM_ADMIN_PASSPHRASE"), "passphrase admin")
	timeout := fs.Duration("timeout", httpclient.DefaultTimeout, "timeout por request")

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	cmd, rest := fs.Arg(0), fs.Args()[1:]

	// no necesita servidor
	if cmd == "hash-passphrase" {
		if len(rest) != 1 {
			fmt.Fprintln(stderr, "hash-passphrase: expected exactly one argument")
			return 2
		}
		h, err := admin.HashPassphrase(rest[0])
		if err != nil {
			fmt.Fprintln(stderr, "hash-passphrase:", err)
			return 1
		}
		fmt.Fprintln(stdout, h)
		return 0
	}

	want := map[string]int{"list": 0, "delete": 1, "purge": 0, "export": 1}
	n, ok := want[cmd]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", cmd)
		fs.Usage()
		return 2
	}
	if len(rest) != n {
		fmt.Fprintf(stderr, "%s: expected %d argument(s)\n", cmd, n)
		return 2
	}

	c, err := httpclient.New(*baseURL, *timeout, nil)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	c.Headers["X-Client-ID"] = *clientID

	ctx := context.Background()
	if err := login(ctx, c, *passphrase); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	switch cmd {
	case "list":
		err = list(ctx, c, stdout)
	case "delete":
		err = remove(ctx, c, rest[0], stdout)
	case "purge":
		err = purge(ctx, c, stdout)
	case "export":
		err = export(ctx, c, rest[0], stdout)
	}

	code := 0
	if err != nil {
		fmt.Fprintln(stderr, err)
		code = 1
	}
	if err := c.DoJSON(ctx, http.MethodPost, "/admin/logout", nil, nil); err != nil {
		fmt.Fprintf(stderr, "logout failed, admin session for client %s may still be open: %v\n", *clientID, err)
		code = 1
	}
	return code
}

func login(ctx context.Context, c *httpclient.Client, passphrase string) error {
	if passphrase == "" {
		return errors.New("admin passphrase required (-passphrase or PETMEM_ADMIN_PASSPHRASE)")
	}
	err := c.DoJSON(ctx, http.MethodPost, "/admin/login", map[string]string{"passphrase": passphrase}, nil)
	if httpclient.StatusCode(err) == http.StatusUnauthorized {
		return errors.New("login rejected: invalid passphrase")
	}
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

func list(ctx context.Context, c *httpclient.Client, out io.Writer) error {
	var rows []petRow
	if err := c.DoJSON(ctx, http.MethodGet, "/admin/pets", nil, &rows); err != nil {
		return fmt.Errorf("list: %w", err)
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tOWNER\tCREATED\tEXPIRES")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, r.Type, r.UserID,
			r.CreatedAt.UTC().Format(time.DateOnly), r.ExpiresAt.UTC().Format(time.DateOnly))
	}
	return tw.Flush()
}

func remove(ctx context.Context, c *httpclient.Client, id string, out io.Writer) error {
	err := c.DoJSON(ctx, http.MethodDelete, "/pets/"+url.PathEscape(id), nil, nil)
	if httpclient.StatusCode(err) == http.StatusNotFound {
		return fmt.Errorf("delete: pet %q not found", id)
	}
	if err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	fmt.Fprintf(out, "deleted %s\n", id)
	return nil
}

func purge(ctx context.Context, c *httpclient.Client, out io.Writer) error {
	var resp struct {
		Purged int `json:"purged"`
	}
	if err := c.DoJSON(ctx, http.MethodPost, "/admin/purge", nil, &resp); err != nil {
		return fmt.Errorf("purge: %w", err)
	}
	fmt.Fprintf(out, "purged %d expired record(s)\n", resp.Purged)
	return nil
}

func export(ctx context.Context, c *httpclient.Client, path string, out io.Writer) error {
	b, err := c.Download(ctx, "/admin/pets/export.xlsx")
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	fmt.Fprintf(out, "wrote %s (%d bytes)\n", path, len(b))
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
