// Package hcl implements config.Loader for graph definitions written in HCL.
//
// A graph file is the body of the root module:
//
//	component "constant" "src" {
//	  out "out" { shape = [5, 3] }
//	  arguments { value = 1 }
//	}
//
//	module "inner" {
//	  in  "in"  { shape = [5, 3] }
//	  out "out" { shape = [5, 3] }
//
//	  component "pipe" "p" {
//	    in  "in"  { shape = [5, 3] }
//	    out "out" { shape = [5, 3] }
//	  }
//
//	  alias_in {
//	    from = "in"
//	    to   = "p.in"
//	  }
//	  alias_out {
//	    from = "p.out"
//	    to   = "out"
//	  }
//	}
//
//	connect {
//	  from = "src.out"
//	  to   = "inner.in"
//	}
//
// Port addresses in links are relative to the enclosing module.
package hcl
