package testutil

// ChainHCL is the three-stage graph used across tests: a constant feeding a
// pipe nested in a module, feeding a sink.
const ChainHCL = `
component "constant" "src" {
  out "out" { shape = [5, 3] }
  arguments {
    value = 1
  }
}

module "inner" {
  in "in" { shape = [5, 3] }
  out "out" { shape = [5, 3] }

  component "pipe" "p" {
    in "in" { shape = [5, 3] }
    out "out" { shape = [5, 3] }
  }

  alias_in {
    from = "in"
    to   = "p.in"
  }
  alias_out {
    from = "p.out"
    to   = "out"
  }
}

component "sink" "dst" {
  in "in" { shape = [5, 3] }
}

connect {
  from = "src.out"
  to   = "inner.in"
}
connect {
  from = "inner.out"
  to   = "dst.in"
}
`

// ChainYAML describes the same graph as ChainHCL.
const ChainYAML = `
components:
  - kind: constant
    name: src
    out:
      out: [5, 3]
    arguments:
      value: 1
  - kind: sink
    name: dst
    in:
      in: [5, 3]
modules:
  - name: inner
    in:
      in: [5, 3]
    out:
      out: [5, 3]
    components:
      - kind: pipe
        name: p
        in:
          in: [5, 3]
        out:
          out: [5, 3]
    links:
      - alias_in: {from: in, to: p.in}
      - alias_out: {from: p.out, to: out}
links:
  - connect: {from: src.out, to: inner.in}
  - connect: {from: inner.out, to: dst.in}
`
