package domain

// KeyPrefix namespaces every key katalog writes to the store.
const KeyPrefix = "katalog:"
