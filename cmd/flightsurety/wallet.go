package main

import (
	"errors"
	"fmt"

	"github.com/flightsurety/surety-contract/internal/config"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
)

// openAccounts opens the wallet and decrypts accounts with given addresses,
// or all wallet accounts if none is given.
func openAccounts(c config.WalletConfig, addrs []string) ([]*wallet.Account, error) {
	w, err := openWallet(c)
	if err != nil {
		return nil, err
	}

	accs := w.Accounts
	if len(addrs) > 0 {
		accs = make([]*wallet.Account, 0, len(addrs))

		for _, a := range addrs {
			acc, err := walletAccount(w, a)
			if err != nil {
				return nil, err
			}

			accs = append(accs, acc)
		}
	}

	if len(accs) == 0 {
		return nil, errors.New("wallet has no accounts")
	}

	for _, acc := range accs {
		if err = acc.Decrypt(c.Password, w.Scrypt); err != nil {
			return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
		}
	}

	return accs, nil
}

// openAccount returns the given account or the wallet default one (first
// if none is marked).
func openAccount(c config.WalletConfig, addr string) (*wallet.Account, error) {
	w, err := openWallet(c)
	if err != nil {
		return nil, err
	}

	var acc *wallet.Account

	if addr != "" {
		acc, err = walletAccount(w, addr)
		if err != nil {
			return nil, err
		}
	} else {
		if len(w.Accounts) == 0 {
			return nil, errors.New("wallet has no accounts")
		}

		acc = w.Accounts[0]
		for _, a := range w.Accounts {
			if a.Default {
				acc = a
				break
			}
		}
	}

	if err = acc.Decrypt(c.Password, w.Scrypt); err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", acc.Address, err)
	}

	return acc, nil
}

func openWallet(c config.WalletConfig) (*wallet.Wallet, error) {
	if c.Path == "" {
		return nil, errors.New("wallet path is not set")
	}

	w, err := wallet.NewWalletFromFile(c.Path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	return w, nil
}

func walletAccount(w *wallet.Wallet, addr string) (*wallet.Account, error) {
	h, err := address.StringToUint160(addr)
	if err != nil {
		return nil, fmt.Errorf("invalid account address %q: %w", addr, err)
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s is missing in the wallet", addr)
	}

	return acc, nil
}
