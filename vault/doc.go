/*
Package vault routes sensitive field data through a PCI-compliant
field-level tokenization proxy so raw PINs never transit the host
application's network stack in the clear.

Two interchangeable backends implement the Collector interface. Calling code
never branches on which backend is active; the vault type is exposed only
for metrics tagging. Backend selection happens once per field via a
FlagProvider and is fixed for the field's lifetime.
*/
package vault
