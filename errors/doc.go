/*
Package errors provides semantic error types for entityconst.

The package defines the error scenarios of the registrar and its storage
backends as sentinels and typed errors that can be checked with the standard
errors.Is() function or the provided helper functions.

Common Errors:

	var (
	    ErrNotFound            = errors.New("entity not found")
	    ErrAlreadyExists       = errors.New("entity already exists")
	    ErrInvalidInput        = errors.New("invalid input")
	    ErrDuplicateIdentifier = errors.New("duplicate identifier")
	    ErrNoIndexMap          = errors.New("no index map found for type")
	)

Usage:

	if err := statuses.Register(ctx, cfg); err != nil {
	    if errors.IsDuplicateIdentifier(err) {
	        // fix the data or adjust key/limit/allow_recaching
	    }
	    return err
	}

	var dup *errors.DuplicateIdentifierError
	if stderrors.As(err, &dup) {
	    log.Printf("%s collides in %s", dup.Identifier, dup.Type)
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
