// Package agu contains the AGU aggregate (Autonomous Gas Unit) together with
// the entities it owns exclusively: tanks and contacts.
//
// An AGU is identified by its CUI. Tank numbers are unique inside one AGU, and
// a contact is unique by the (phone, type) pair inside one AGU. Providers and
// transport company associations reference the AGU by CUI and are persisted
// on their own.
package agu
