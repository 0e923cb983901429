package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/leapstack-labs/pingerdash/internal/cli/output"
	"github.com/leapstack-labs/pingerdash/internal/wifi"
	"github.com/spf13/cobra"
)

// WifiOptions holds options for the wifi command.
type WifiOptions struct {
	SSID     string
	Auth     string
	Password string
	Hidden   bool
	Out      string
	Level    string
	BoxSize  int
	Border   int
}

// NewWifiCommand creates the wifi command.
func NewWifiCommand() *cobra.Command {
	opts := &WifiOptions{}

	cmd := &cobra.Command{
		Use:   "wifi",
		Short: "Generate a Wi-Fi QR code",
		Long: `Write a PNG QR code that phones can scan to join a Wi-Fi network.

The code carries WIFI:T:<auth>;S:<ssid>;P:<password>;H:<hidden>;; with the
values inserted as given. OPEN networks never carry a password.`,
		Example: `  # WPA3 network
  pingerdash wifi --ssid Office --password hunter2

  # Hidden WPA2 network with a custom file name
  pingerdash wifi --ssid Lab --auth WPA2-PSK --password s3cret --hidden --out lab.png

  # Guest network
  pingerdash wifi --ssid Guest --auth OPEN`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWifi(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.SSID, "ssid", "", "Network name")
	cmd.Flags().StringVar(&opts.Auth, "auth", string(wifi.AuthWPA3), "Authentication type: WPA3-SAE, WPA2-PSK or OPEN")
	cmd.Flags().StringVar(&opts.Password, "password", "", "Network password")
	cmd.Flags().BoolVar(&opts.Hidden, "hidden", false, "The network does not broadcast its SSID")
	cmd.Flags().StringVar(&opts.Out, "out", wifi.DownloadName, "PNG file to write")
	cmd.Flags().StringVar(&opts.Level, "level", "", "Error correction level: L, M, Q or H (default: from config)")
	cmd.Flags().IntVar(&opts.BoxSize, "box-size", 0, "Pixels per module (default: from config)")
	cmd.Flags().IntVar(&opts.Border, "border", -1, "Quiet zone width in modules (default: from config)")

	_ = cmd.RegisterFlagCompletionFunc("auth", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		auths := make([]string, len(wifi.Auths))
		for i, a := range wifi.Auths {
			auths[i] = string(a)
		}
		return auths, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runWifi(cmd *cobra.Command, opts *WifiOptions) error {
	cmdCtx := NewCommandContextWithoutAdapter(cmd)
	r := cmdCtx.Renderer

	auth, err := wifi.ParseAuth(opts.Auth)
	if err != nil {
		return err
	}
	creds := wifi.Credentials{
		SSID:     opts.SSID,
		Auth:     auth,
		Password: opts.Password,
		Hidden:   opts.Hidden,
	}
	if err := creds.Validate(); err != nil {
		return err
	}

	qr := cmdCtx.Cfg.QROptions()
	if opts.Level != "" {
		qr.Level = opts.Level
	}
	if opts.BoxSize > 0 {
		qr.BoxSize = opts.BoxSize
	}
	if opts.Border >= 0 {
		qr.Border = opts.Border
	}

	payload := creds.Payload()
	data, err := wifi.PNG(payload, qr)
	if err != nil {
		return err
	}
	if err := os.WriteFile(opts.Out, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", opts.Out, err)
	}
	cmdCtx.Logger.Debug("wrote wifi qr code", "file", opts.Out, "bytes", len(data))

	switch r.EffectiveMode() {
	case output.ModeJSON:
		absPath, _ := filepath.Abs(opts.Out)
		return r.JSON(output.WifiOutput{
			SSID:    creds.SSID,
			Auth:    string(creds.Auth),
			Hidden:  creds.Hidden,
			Payload: payload,
			File:    absPath,
		})
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, "Wi-Fi QR Code"))
		r.Println("")
		r.Println(output.FormatKeyValue("SSID", creds.SSID))
		r.Println(output.FormatKeyValue("Authentication", string(creds.Auth)))
		r.Println(output.FormatKeyValue("File", opts.Out))
	default:
		r.Success("QR code for " + creds.SSID + " written to " + opts.Out)
	}
	return nil
}
