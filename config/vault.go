package config

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/vault/api"
)

// ResolveAdminCredentials fills the admin credentials from a Vault KV v2
// secret. It does nothing unless a Vault address and admin path are set and
// the password was not already provided. The secret is expected to hold an
// "admin_password" key and optionally "admin_user".
func (c *Config) ResolveAdminCredentials(ctx context.Context, log *slog.Logger) error {
	if c.AdminPassword != "" || c.Vault.Address == "" || c.Vault.AdminPath == "" {
		return nil
	}

	vaultCfg := api.DefaultConfig()
	vaultCfg.Address = c.Vault.Address
	vaultCfg.HttpClient = &http.Client{Timeout: 10 * time.Second}

	client, err := api.NewClient(vaultCfg)
	if err != nil {
		return fmt.Errorf("failed to create Vault client: %w", err)
	}
	if c.Vault.Token != "" {
		client.SetToken(c.Vault.Token)
	}

	mount := strings.Trim(c.Vault.Mount, "/")
	dataPath := strings.Trim(c.Vault.AdminPath, "/")
	path := fmt.Sprintf("%s/data/%s", mount, dataPath)

	secret, err := client.Logical().ReadWithContext(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to read admin credentials from Vault: %w", err)
	}
	if secret == nil || secret.Data == nil {
		return fmt.Errorf("no secret found at Vault path %s", path)
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return fmt.Errorf("invalid data format at Vault path %s", path)
	}

	password, _ := data["admin_password"].(string)
	if password == "" {
		return fmt.Errorf("secret at Vault path %s has no admin_password", path)
	}
	c.AdminPassword = password

	if user, _ := data["admin_user"].(string); user != "" && !c.adminUserSet {
		c.AdminUser = user
	}

	log.Info("Admin credentials loaded from Vault", slog.String("path", path), slog.String("user", c.AdminUser))
	return nil
}
