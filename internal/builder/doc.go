/*
Package builder turns a validated config.Model into a live module tree.

Construction runs in two passes:

 1. Node Creation: every module block becomes a *module.Module with its
    boundary ports, and every component block is built through the kind
    registry, which creates its ports and kernel. Children are registered in
    their parent behind fresh handles.

 2. Linking: links are applied in an order that makes aliasing come out
    right even though aliasing is not transitive. All alias_out links run
    first, deepest module first, so a module's out-port already shares its
    child's cell by the time anything connects to it. Then connect and
    alias_in links run top-down, so a module's in-port is already fed from
    upstream by the time its children alias to it.

Within one depth, links keep their declaration order.
*/
package builder
