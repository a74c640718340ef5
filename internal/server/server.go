// Copyright 2026 the kube-ldap contributors. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package server is the command line entry point for kube-ldap.
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
	"k8s.io/utils/clock"

	"go.kubeldap.dev/internal/auditid"
	"go.kubeldap.dev/internal/authenticator"
	"go.kubeldap.dev/internal/config"
	"go.kubeldap.dev/internal/crypto/ptls"
	"go.kubeldap.dev/internal/directory"
	"go.kubeldap.dev/internal/endpoint"
	"go.kubeldap.dev/internal/httputil/securityheader"
	"go.kubeldap.dev/internal/identity"
	"go.kubeldap.dev/internal/metrics"
	"go.kubeldap.dev/internal/plog"
	"go.kubeldap.dev/internal/token"
)

const (
	authPath        = "/auth"
	tokenReviewPath = "/token"
	healthzPath     = "/healthz"
	caCertPath      = "/cacert"
	metricsPath     = "/metrics"
)

func knownPath(path string) bool {
	switch path {
	case authPath, tokenReviewPath, healthzPath, caCertPath, metricsPath:
		return true
	default:
		return false
	}
}

// App is an object that represents the kube-ldap application.
type App struct {
	cmd *cobra.Command

	// CLI flags
	configPath string
}

// New constructs a new App with command line args, stdout and stderr.
func New(ctx context.Context, args []string, stdout, stderr io.Writer) *App {
	app := &App{}
	app.addServerCommand(ctx, args, stdout, stderr)
	return app
}

// Run the server.
func (a *App) Run() error {
	return a.cmd.Execute()
}

// Create the server command and save it into the App.
func (a *App) addServerCommand(ctx context.Context, args []string, stdout, stderr io.Writer) {
	cmd := &cobra.Command{
		Use: "kube-ldap",
		Long: heredoc.Doc(`
			kube-ldap exchanges directory credentials for tokens which the
			Kubernetes API server accepts through its webhook token
			authenticator.`),
		RunE:         func(cmd *cobra.Command, args []string) error { return a.runServer(ctx) },
		Args:         cobra.NoArgs,
		SilenceUsage: true,
	}

	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	addCommandlineFlagsToCommand(cmd, a)

	a.cmd = cmd
}

// Define the app's commandline flags.
func addCommandlineFlagsToCommand(cmd *cobra.Command, app *App) {
	cmd.Flags().StringVarP(
		&app.configPath,
		"config",
		"c",
		"kube-ldap.yaml",
		"path to configuration file",
	)
}

// deps are the collaborators of the HTTP handlers.
type deps struct {
	authenticator endpoint.Authenticator
	mapper        endpoint.IdentityMapper
	issuer        *token.Issuer
	recorder      metrics.Recorder
	metrics       *metrics.Metrics
	realm         string
	caCertFile    string
}

func (a *App) runServer(ctx context.Context) error {
	cfg, err := config.FromPath(a.configPath)
	if err != nil {
		return fmt.Errorf("could not load config: %w", err)
	}

	if err := plog.ValidateAndSetLogLevelAndFormatGlobally(ctx, cfg.Log); err != nil {
		return fmt.Errorf("could not configure logging: %w", err)
	}

	handle, d, err := prepare(cfg)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout.Duration)
		defer cancel()
		if err := handle.Close(closeCtx); err != nil {
			plog.WarningErr("could not close directory connection", err)
		}
	}()

	server := &http.Server{
		Handler:           newHandler(d),
		ReadHeaderTimeout: 10 * time.Second,
	}

	if cfg.Server.TLSCertificateFile != "" {
		cert, err := tls.LoadX509KeyPair(cfg.Server.TLSCertificateFile, cfg.Server.TLSKeyFile)
		if err != nil {
			return fmt.Errorf("could not load serving certificate: %w", err)
		}
		server.TLSConfig = ptls.Default(nil)
		server.TLSConfig.Certificates = []tls.Certificate{cert}
	}

	l, err := net.Listen("tcp", cfg.Server.Address)
	if err != nil {
		return fmt.Errorf("could not listen on %s: %w", cfg.Server.Address, err)
	}

	plog.Always("serving", "address", l.Addr().String(), "tls", server.TLSConfig != nil)
	return serve(ctx, server, l, cfg.Server.ShutdownTimeout.Duration)
}

// prepare builds the directory client and everything on top of it from the config.
func prepare(cfg *config.Config) (*directory.Handle, *deps, error) {
	caBundle, err := config.ReadFile(cfg.LDAP.CABundleFile)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read ldap ca bundle: %w", err)
	}
	bindPassword, err := config.ReadSecretFile(cfg.LDAP.BindPasswordFile)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read ldap bind password: %w", err)
	}
	keyData, err := config.ReadFile(cfg.Token.SigningKeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("could not read token signing key: %w", err)
	}

	dialer, err := directory.NewDialer(directory.DialConfig{
		Host:     cfg.LDAP.Host,
		Protocol: directory.Protocol(cfg.LDAP.Protocol),
		CABundle: caBundle,
		Timeout:  cfg.LDAP.Timeout.Duration,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("could not configure ldap dialer: %w", err)
	}
	handle := directory.NewHandle(dialer, *cfg.LDAP.RequireTLS)
	client := directory.NewClient(handle, directory.ClientConfig{
		BaseDN:       cfg.LDAP.BaseDN,
		BindDN:       cfg.LDAP.BindDN,
		BindPassword: bindPassword,
	})

	auth, err := authenticator.New(client, cfg.LDAP.UserFilter)
	if err != nil {
		return nil, nil, err
	}

	mapper := identity.NewMapper(identity.Mapping{
		Username:           cfg.Mapping.Username,
		UID:                cfg.Mapping.UID,
		Groups:             cfg.Mapping.Groups,
		Extra:              cfg.Mapping.Extra,
		NestedGroups:       cfg.LDAP.NestedGroups.Enabled,
		NestedGroupsFilter: cfg.LDAP.NestedGroups.Filter,
	}, client)

	key, err := token.ParseKey(keyData)
	if err != nil {
		return nil, nil, fmt.Errorf("could not load token signing key: %w", err)
	}
	issuer, err := token.NewIssuer(key, cfg.Token.Lifetime.Duration, clock.RealClock{})
	if err != nil {
		return nil, nil, err
	}

	d := &deps{
		authenticator: auth,
		mapper:        mapper,
		issuer:        issuer,
		recorder:      metrics.Noop{},
		realm:         cfg.Server.Realm,
		caCertFile:    cfg.Server.CACertificateFile,
	}
	if cfg.Metrics.Enabled {
		d.metrics = metrics.New()
		d.recorder = d.metrics
	}
	return handle, d, nil
}

func newHandler(d *deps) http.Handler {
	mux := http.NewServeMux()
	mux.Handle(authPath, endpoint.NewAuthHandler(d.authenticator, d.mapper, d.issuer, d.realm, d.recorder))
	mux.Handle(tokenReviewPath, endpoint.NewTokenReviewHandler(d.issuer, d.recorder))
	mux.Handle(healthzPath, endpoint.NewHealthzHandler())
	mux.Handle(caCertPath, endpoint.NewCACertHandler(d.caCertFile))
	if d.metrics != nil {
		mux.Handle(metricsPath, d.metrics.Handler())
	}

	return auditid.WithAuditID(withRequestLogging(securityheader.Wrap(mux), d.recorder))
}

// serve runs the server on l until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, server *http.Server, l net.Listener, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		if server.TLSConfig != nil {
			// the certificates are already in server.TLSConfig
			errCh <- server.ServeTLS(l, "", "")
			return
		}
		errCh <- server.Serve(l)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server exited: %w", err)
	case <-ctx.Done():
		plog.Debug("server context cancelled", "err", ctx.Err())
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server exited: %w", err)
	}
	plog.Always("server stopped")
	return nil
}

func signalCtx() context.Context {
	signalCh := make(chan os.Signal, 1)
	signal.Notify(signalCh, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		defer cancel()

		s := <-signalCh
		plog.Debug("saw signal", "signal", s)
	}()

	return ctx
}

// Main runs kube-ldap until it receives SIGINT or SIGTERM.
func Main() {
	defer plog.Flush()

	ctx := signalCtx()
	if err := New(ctx, os.Args[1:], os.Stdout, os.Stderr).Run(); err != nil {
		plog.Error("kube-ldap failed", err)
		plog.Flush()
		os.Exit(1)
	}
}
