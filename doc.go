/*
Package entityconst exposes the persisted rows of a model type as named,
constant-like identifiers.

Lookup tables such as statuses or US states are usually referenced from code
by name. A Registry reads every record of one model type once, derives an
identifier from a configured attribute (default "name"), truncates it to a
limit (default 64 characters) and binds the identifier to the record:

	store := mock.New[Status]()                         // or ddb / sqlstore
	statuses := entityconst.New[Status]("statuses", store,
	    entityconst.WithLogger(zaplog.ZapLogger{L: logger}),
	)
	if err := statuses.Register(ctx, entityconst.Config{}); err != nil {
	    return err // fatal start-up fault
	}
	pending := statuses.MustLookup("PENDING")

Identifiers are produced by identifier.Constantize ("Completed, Late" becomes
"COMPLETED_LATE") unless another normalizer is supplied with WithNormalizer.

Collision policy:
  - two records with the same identifier: the first one wins, or the last
    one when Config.AllowRecaching is set;
  - an identifier listed in Config.Reserved fails Register with a
    DuplicateIdentifierError unless Config.AllowRecaching is set.

Records with a missing or empty attribute are skipped silently.

A Catalog groups registries by model type name so they can be registered
together from a configuration file (see package config).
*/
package entityconst
