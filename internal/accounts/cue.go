package accounts

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// CUEResolver reads authenticator declarations from the .cue files in Dir.
//
// Each file contributes entries under the top-level "account" struct, keyed
// by account type:
//
//	account: "com.example.chat": kinds: [{
//		mimetype:       "vnd.contactlens.item/vnd.com.example.chat.profile"
//		icon:           "chat"
//		summary_column: "data2"
//		detail_column:  "data3"
//	}]
//
// Files are unified, so an account type may be split across files as long
// as the values agree.
type CUEResolver struct {
	Dir string
}

type cueAccount struct {
	Kinds []DataKind `json:"kinds"`
}

// Authenticators implements InfoResolver. A missing directory yields no
// authenticators.
func (r CUEResolver) Authenticators(ctx context.Context) ([]Authenticator, error) {
	files, err := filepath.Glob(filepath.Join(r.Dir, "*.cue"))
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.Dir, err)
	}
	if len(files) == 0 {
		return nil, nil
	}
	sort.Strings(files)

	cctx := cuecontext.New()
	var merged cue.Value
	for i, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		v := cctx.CompileBytes(data, cue.Filename(path))
		if err := v.Err(); err != nil {
			return nil, fmt.Errorf("compile %s: %w", path, err)
		}
		if i == 0 {
			merged = v
		} else {
			merged = merged.Unify(v)
		}
	}
	if err := merged.Err(); err != nil {
		return nil, fmt.Errorf("unify account declarations: %w", err)
	}

	accountsVal := merged.LookupPath(cue.ParsePath("account"))
	if !accountsVal.Exists() {
		return nil, nil
	}

	iter, err := accountsVal.Fields()
	if err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}

	var auths []Authenticator
	for iter.Next() {
		var decl cueAccount
		if err := iter.Value().Decode(&decl); err != nil {
			return nil, fmt.Errorf("decode account %s: %w", iter.Selector().Unquoted(), err)
		}
		auths = append(auths, Authenticator{
			AccountType: iter.Selector().Unquoted(),
			Kinds:       decl.Kinds,
		})
	}
	return auths, nil
}
