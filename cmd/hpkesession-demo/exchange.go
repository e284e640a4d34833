// Copyright 2021 The age Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lunarforge/hpkesession"
	"github.com/lunarforge/hpkesession/internal/config"
	"github.com/lunarforge/hpkesession/internal/log"
	"github.com/lunarforge/hpkesession/internal/metrics"
)

var exchangeRounds int

var exchangeCmd = &cobra.Command{
	Use:   "exchange",
	Short: "Run an in-process sender/recipient request-response exchange",
	RunE:  runExchange,
}

func init() {
	exchangeCmd.Flags().IntVar(&exchangeRounds, "rounds", 1, "number of request/response round trips")
	rootCmd.AddCommand(exchangeCmd)
}

func runExchange(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath, envPath)
	if err != nil {
		return err
	}

	logger, err := log.New(cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("couldn't initialize logger: %w", err)
	}
	defer logger.Sync()

	if cfg.MetricsAddr != "" {
		server := &http.Server{Addr: cfg.MetricsAddr, Handler: metrics.Handler()}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", log.Error(err))
			}
		}()
		defer server.Close()
	}

	sessionID := uuid.NewString()
	logger.Info("starting session", log.String("session_id", sessionID))

	var opts []hpkesession.Option
	if cfg.Info != "" {
		opts = append(opts, hpkesession.WithInfo([]byte(cfg.Info)))
	}

	recipient, err := hpkesession.NewRecipientCryptoProvider(opts...)
	if err != nil {
		metrics.SessionsCreated.WithLabelValues("recipient", "error").Inc()
		return fmt.Errorf("couldn't create recipient: %w", err)
	}
	metrics.SessionsCreated.WithLabelValues("recipient", "ok").Inc()

	sender := hpkesession.NewSenderCryptoProvider(recipient.SerializedPublicKey(), opts...)

	enc, reqEnc, err := sender.CreateEncryptor()
	if err != nil {
		metrics.SessionsCreated.WithLabelValues("sender", "error").Inc()
		return fmt.Errorf("couldn't create encryptor: %w", err)
	}
	metrics.SessionsCreated.WithLabelValues("sender", "ok").Inc()

	recDec, err := recipient.CreateDecryptor(enc)
	if err != nil {
		return fmt.Errorf("couldn't create decryptor: %w", err)
	}

	for i := 0; i < exchangeRounds; i++ {
		requestPlaintext := fmt.Sprintf("request #%d", i)

		start := time.Now()
		ciphertext, respDec, err := reqEnc.Encrypt([]byte(requestPlaintext), []byte(sessionID))
		observe("seal", "request", err, start)
		if err != nil {
			return fmt.Errorf("couldn't encrypt request: %w", err)
		}

		start = time.Now()
		plaintext, respEnc, err := recDec.Decrypt(ciphertext, []byte(sessionID))
		observe("open", "request", err, start)
		if err != nil {
			return fmt.Errorf("couldn't decrypt request: %w", err)
		}
		logger.Info("recipient received request",
			log.String("session_id", sessionID), log.Int("round", i))

		responsePlaintext := fmt.Sprintf("response #%d for %q", i, plaintext)

		start = time.Now()
		ciphertext, recDec, err = respEnc.Encrypt([]byte(responsePlaintext), []byte(sessionID))
		observe("seal", "response", err, start)
		if err != nil {
			return fmt.Errorf("couldn't encrypt response: %w", err)
		}

		start = time.Now()
		plaintext, reqEnc, err = respDec.Decrypt(ciphertext, []byte(sessionID))
		observe("open", "response", err, start)
		if err != nil {
			return fmt.Errorf("couldn't decrypt response: %w", err)
		}
		logger.Info("sender received response",
			log.String("session_id", sessionID), log.Int("round", i))

		fmt.Fprintf(cmd.OutOrStdout(), "round %d: %s\n", i, plaintext)
	}

	return nil
}

func observe(operation, direction string, err error, start time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.MessagesProcessed.WithLabelValues(direction, operation, outcome).Inc()
	metrics.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
