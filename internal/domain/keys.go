package domain

// KeyPrefix namespaces every key and index this service creates in the search engine.
// Overridden from storage.key_prefix at startup.
var KeyPrefix = "dlf:"
