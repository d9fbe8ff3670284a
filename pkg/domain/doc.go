/*
Package domain contains the entity models of a reVISit study configuration.

It defines the validated building blocks of a study document: responses,
components, response context defaults, study metadata and UI configuration.
This package is kept pure and free of I/O; loading rows and copying assets
live in the adapters.

# Key Entities

  - Response: One answerable input field. Its "type" selects the field table
    used to validate it and can never change after creation.
  - Component: One page or stimulus. Holds an ordered list of responses with
    unique ids and a metadata bag that is not serialized.
  - ResponseContext: Ordered default rules per response kind, with "all" as a
    wildcard. Rules only fill fields that are still unset.
  - Row: An ordered record used for data rows and permutation factors.

# Inheritance

NewComponent accepts WithBase to copy every field the call does not give from
a template component. Clone and Derive produce independent deep copies; no
entity keeps a reference to the component it was copied from.
*/
package domain
