// Command asm16 assembles and runs programs written against the 16-bit
// register machine implemented by the parser and cpu packages.
package main

import (
	"fmt"
	"os"

	"asm16/cpu"
	"asm16/parser"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	trace     bool
	registers bool
	regNames  = []string{"r0", "r1", "r2", "r3", "r4", "r5", "r6", "r7"}
	log       = logrus.New()
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "asm16",
		Short: "assemble and run programs for the 16-bit register machine",
	}
	root.PersistentFlags().BoolVar(&trace, "trace", false, "log each executed instruction")
	root.PersistentFlags().BoolVar(&registers, "registers", false, "print register contents after assembling/running")
	root.AddCommand(newRunCmd(), newDumpCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run [file]",
		Short: "assemble and execute a source file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
}

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump [file]",
		Short: "assemble a source file and print its resolved instructions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return dump(args[0])
		},
	}
}

func buildRegisterMap(c *cpu.CPU) parser.RegisterMap {
	m := make(parser.RegisterMap, len(regNames))
	for i, name := range regNames {
		reg := c.Register(i)
		m[name] = reg.Register()
	}
	return m
}

func assemble(path string) (*parser.Parser, *cpu.CPU, []cpu.Instruction, error) {
	p, err := parser.FromFile(path)
	if err != nil {
		logErr(err)
		return nil, nil, nil, err
	}
	c := cpu.New()
	instrs, err := p.Resolve(buildRegisterMap(c))
	if err != nil {
		logErr(err)
		return nil, nil, nil, err
	}
	return p, c, instrs, nil
}

func run(path string) error {
	if trace {
		log.SetLevel(logrus.DebugLevel)
	}
	_, c, instrs, err := assemble(path)
	if err != nil {
		return err
	}

	for c.ProgramCounter() < uint16(len(instrs)) {
		instr := instrs[c.ProgramCounter()]
		if trace {
			log.WithFields(logrus.Fields{
				"pc":   c.ProgramCounter(),
				"type": instr.Type.String(),
			}).Debug("executing instruction")
		}
		if err := c.Execute(instr); err != nil {
			log.WithError(err).WithField("pc", c.ProgramCounter()).Error("execution fault")
			return err
		}
		c.SetProgramCounter(c.ProgramCounter() + 1)
	}

	snap := c.Snapshot()
	fmt.Printf("flags: 0x%02x\n", snap.Flags)
	if registers {
		fmt.Printf("registers: %v\n", snap.Registers)
	}
	return nil
}

func dump(path string) error {
	_, c, instrs, err := assemble(path)
	if err != nil {
		return err
	}
	for i, instr := range instrs {
		fmt.Printf("%3d: %s\n", i, instr.Type.String())
	}
	if registers {
		snap := c.Snapshot()
		fmt.Printf("registers: %v\n", snap.Registers)
	}
	return nil
}

func logErr(err error) {
	if info, ok := parser.InvalidTokenDetail(err); ok {
		log.WithFields(logrus.Fields{
			"line": info.Line, "column": info.Column, "token": info.Token,
		}).Error("invalid token")
		return
	}
	if info, ok := parser.UndefinedReferenceDetail(err); ok {
		log.WithFields(logrus.Fields{
			"instruction": info.ReferencingInstructionIndex, "token": info.Token,
		}).Error("undefined reference")
		return
	}
	log.WithError(err).Error("assembly failed")
}
