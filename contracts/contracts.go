/*
Package contracts provides access to compiled FlightSurety contracts.

Compiled artifacts are expected to be placed next to contract sources, see
Makefile:

	suretydata/contract.nef
	suretydata/manifest.json
	suretyapp/contract.nef
	suretyapp/manifest.json
*/
package contracts

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/io"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
)

const (
	dataDir = "suretydata"
	appDir  = "suretyapp"

	nefName      = "contract.nef"
	manifestName = "manifest.json"
)

// Contract groups information about Neo contract stored in the current package.
type Contract struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Surety is a pair of FlightSurety contracts.
type Surety struct {
	Data Contract
	App  Contract
}

var (
	errInvalidNEF      = errors.New("invalid NEF")
	errInvalidManifest = errors.New("invalid manifest")
)

// Read reads compiled data and application contracts from fsys. Contracts
// must be deployed in the order of Surety fields.
func Read(fsys fs.FS) (Surety, error) {
	var (
		res Surety
		err error
	)

	res.Data, err = readContractFromDir(fsys, dataDir)
	if err != nil {
		return res, fmt.Errorf("read contract %s: %w", dataDir, err)
	}

	res.App, err = readContractFromDir(fsys, appDir)
	if err != nil {
		return res, fmt.Errorf("read contract %s: %w", appDir, err)
	}

	return res, nil
}

// ReadDir is the same as Read, but reads contracts from the directory.
func ReadDir(dir string) (Surety, error) {
	return Read(os.DirFS(dir))
}

func readContractFromDir(fsys fs.FS, dir string) (Contract, error) {
	var c Contract

	// fs.FS always uses "/", so filepath.Join() is not applicable.
	fNEF, err := fsys.Open(dir + "/" + nefName)
	if err != nil {
		return c, fmt.Errorf("open NEF: %w", err)
	}
	defer fNEF.Close()

	fManifest, err := fsys.Open(dir + "/" + manifestName)
	if err != nil {
		return c, fmt.Errorf("open manifest: %w", err)
	}
	defer fManifest.Close()

	bReader := io.NewBinReaderFromIO(fNEF)
	c.NEF.DecodeBinary(bReader)
	if bReader.Err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidNEF, bReader.Err)
	}

	err = json.NewDecoder(fManifest).Decode(&c.Manifest)
	if err != nil {
		return c, fmt.Errorf("%w: %w", errInvalidManifest, err)
	}

	return c, nil
}
