package main

import (
	"github.com/spf13/cobra"
)

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "ecoscan",
		Short: "Scan products, manage your cart and compare what is in it",
		Long: `ecoscan scans product barcodes and QR codes, adds recognised products to
your cart on the EcoScan server and compares products side by side.

Configuration is read from the environment (and a .env file when present):
  SERVER_URL       EcoScan API base URL
  STORE_PATH       where the login session is kept
  CATALOG_SOURCE   static, yaml, sqlite or remote
  SCAN_FRAMES_DIR  camera frame directories; stdin is used when unset`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(a.out)
	root.SetIn(a.in)

	root.AddCommand(
		newRegisterCmd(a),
		newLoginCmd(a),
		newLogoutCmd(a),
		newCartCmd(a),
		newScanCmd(a),
		newCompareCmd(a),
		newCatalogCmd(a),
	)
	return root
}
