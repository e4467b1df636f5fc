package config

import (
	"flag"
	"os"
	"time"

	"github.com/dsmirnovs/authbox/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":3000")
//	-d string   PostgreSQL DSN
//	-m string   SMTP host
//	-p int      SMTP port
//	-u string   SMTP user
//	-w string   SMTP password
//	-f string   sender address for reset mail
//	-r int      reset code validity, minutes
//	-x          enable development routes (use -x=true)
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The validity
// flag is accepted as an integer in minutes and converted to time.Duration.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-m", "-p", "-u", "-w", "-f", "-r", "-x"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SMTPHost, "m", config.SMTPHost, "SMTP host")
	fs.IntVar(&config.SMTPPort, "p", config.SMTPPort, "SMTP port")
	fs.StringVar(&config.SMTPUser, "u", config.SMTPUser, "SMTP user")
	fs.StringVar(&config.SMTPPassword, "w", config.SMTPPassword, "SMTP password")
	fs.StringVar(&config.EmailFrom, "f", config.EmailFrom, "sender address for reset mail")

	resetCodeValidity := fs.Int("r", int(config.ResetCodeValidity.Minutes()), "reset_code_validity (in minutes)")

	fs.BoolVar(&config.DevRoutes, "x", config.DevRoutes, "enable development routes")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.ResetCodeValidity = time.Duration(*resetCodeValidity) * time.Minute
}
