/*
Package observability turns engine lifecycle hooks into metrics and logs.

Metrics exposes Prometheus counters for committed, undefined and failed
transitions. LogHooks writes one structured record per event. Both return
domain.LifecycleHooks, so they can be combined with Merge and handed to
fsm.WithLifecycleHooks.
*/
package observability
