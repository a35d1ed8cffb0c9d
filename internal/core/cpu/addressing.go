package cpu

// addrMode enumerates the 6502's addressing modes. The cycle sequence
// each one pushes is what makes this core cycle-accurate rather than
// merely cycle-counted: dummy reads happen on the same cycle real
// hardware performs them, and indexed reads take the early-out cycle
// count only when indexing didn't cross a page.
type addrMode uint8

const (
	modeImplied addrMode = iota
	modeAccumulator
	modeImmediate
	modeZeroPage
	modeZeroPageX
	modeZeroPageY
	modeAbsolute
	modeAbsoluteX
	modeAbsoluteY
	modeIndirectX
	modeIndirectY
	modeRelative
	modeIndirect
)

// pushRead enqueues the cycles of a read-category instruction: every
// mode ends by invoking finish with the fetched operand on the exact
// cycle real hardware would have the value available, including the
// conditional extra cycle absolute,X/Y and (zp),Y take only when
// indexing crosses a page.
func (c *CPU) pushRead(mode addrMode, finish func(c *CPU, value uint8)) {
	switch mode {
	case modeImmediate:
		c.push(func(c *CPU) {
			v := c.bus.Read(c.PC)
			c.PC++
			finish(c, v)
		})

	case modeZeroPage:
		c.push(func(c *CPU) { c.addr = uint16(c.bus.Read(c.PC)); c.PC++ })
		c.push(func(c *CPU) { finish(c, c.bus.Read(c.addr)) })

	case modeZeroPageX:
		c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
		c.push(func(c *CPU) {
			c.bus.Read(uint16(c.fetchedAddrLo))
			c.addr = uint16(c.fetchedAddrLo + c.X)
		})
		c.push(func(c *CPU) { finish(c, c.bus.Read(c.addr)) })

	case modeZeroPageY:
		c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
		c.push(func(c *CPU) {
			c.bus.Read(uint16(c.fetchedAddrLo))
			c.addr = uint16(c.fetchedAddrLo + c.Y)
		})
		c.push(func(c *CPU) { finish(c, c.bus.Read(c.addr)) })

	case modeAbsolute:
		c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
		c.push(func(c *CPU) {
			hi := c.bus.Read(c.PC)
			c.PC++
			c.addr = uint16(hi)<<8 | uint16(c.fetchedAddrLo)
		})
		c.push(func(c *CPU) { finish(c, c.bus.Read(c.addr)) })

	case modeAbsoluteX:
		c.pushAbsoluteIndexedRead(c.X, finish)
	case modeAbsoluteY:
		c.pushAbsoluteIndexedRead(c.Y, finish)

	case modeIndirectX:
		c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
		c.push(func(c *CPU) { c.bus.Read(uint16(c.fetchedAddrLo)) })
		c.push(func(c *CPU) { c.ptr = uint16(c.fetchedAddrLo + c.X); c.operand = c.bus.Read(c.ptr) })
		c.push(func(c *CPU) {
			hi := c.bus.Read((c.ptr + 1) & 0x00FF)
			c.addr = uint16(hi)<<8 | uint16(c.operand)
		})
		c.push(func(c *CPU) { finish(c, c.bus.Read(c.addr)) })

	case modeIndirectY:
		c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
		c.push(func(c *CPU) { c.operand = c.bus.Read(uint16(c.fetchedAddrLo)) })
		c.push(func(c *CPU) {
			hi := c.bus.Read(uint16(c.fetchedAddrLo+1) & 0x00FF)
			base := uint16(hi)<<8 | uint16(c.operand)
			target := base + uint16(c.Y)
			c.pageCrossed = (target & 0xFF00) != (base & 0xFF00)
			c.addr = (base & 0xFF00) | (target & 0x00FF)
			c.ptr = target
		})
		c.push(func(c *CPU) {
			v := c.bus.Read(c.addr)
			if !c.pageCrossed {
				finish(c, v)
				return
			}
			c.addr = c.ptr
			c.push(func(c *CPU) { finish(c, c.bus.Read(c.addr)) })
		})
	}
}

func (c *CPU) pushAbsoluteIndexedRead(index uint8, finish func(c *CPU, value uint8)) {
	c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
	c.push(func(c *CPU) {
		hi := c.bus.Read(c.PC)
		c.PC++
		base := uint16(hi)<<8 | uint16(c.fetchedAddrLo)
		target := base + uint16(index)
		c.pageCrossed = (target & 0xFF00) != (base & 0xFF00)
		c.addr = (base & 0xFF00) | (target & 0x00FF)
		c.ptr = target
	})
	c.push(func(c *CPU) {
		v := c.bus.Read(c.addr)
		if !c.pageCrossed {
			finish(c, v)
			return
		}
		c.addr = c.ptr
		c.push(func(c *CPU) { finish(c, c.bus.Read(c.addr)) })
	})
}

// pushAddr enqueues the cycles of a write or read-modify-write
// instruction's addressing: it always ends with c.addr set and never
// reads the operand itself (the write/RMW tail does that), and indexed
// modes always take the worst-case extra cycle since hardware cannot
// know in advance it won't need the corrected address.
func (c *CPU) pushAddr(mode addrMode) {
	switch mode {
	case modeZeroPage:
		c.push(func(c *CPU) { c.addr = uint16(c.bus.Read(c.PC)); c.PC++ })

	case modeZeroPageX:
		c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
		c.push(func(c *CPU) {
			c.bus.Read(uint16(c.fetchedAddrLo))
			c.addr = uint16(c.fetchedAddrLo + c.X)
		})

	case modeZeroPageY:
		c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
		c.push(func(c *CPU) {
			c.bus.Read(uint16(c.fetchedAddrLo))
			c.addr = uint16(c.fetchedAddrLo + c.Y)
		})

	case modeAbsolute:
		c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
		c.push(func(c *CPU) {
			hi := c.bus.Read(c.PC)
			c.PC++
			c.addr = uint16(hi)<<8 | uint16(c.fetchedAddrLo)
		})

	case modeAbsoluteX:
		c.pushAbsoluteIndexedAddr(c.X)
	case modeAbsoluteY:
		c.pushAbsoluteIndexedAddr(c.Y)

	case modeIndirectX:
		c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
		c.push(func(c *CPU) { c.bus.Read(uint16(c.fetchedAddrLo)) })
		c.push(func(c *CPU) { c.ptr = uint16(c.fetchedAddrLo + c.X); c.operand = c.bus.Read(c.ptr) })
		c.push(func(c *CPU) {
			hi := c.bus.Read((c.ptr + 1) & 0x00FF)
			c.addr = uint16(hi)<<8 | uint16(c.operand)
		})

	case modeIndirectY:
		c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
		c.push(func(c *CPU) { c.operand = c.bus.Read(uint16(c.fetchedAddrLo)) })
		c.push(func(c *CPU) {
			hi := c.bus.Read(uint16(c.fetchedAddrLo+1) & 0x00FF)
			base := uint16(hi)<<8 | uint16(c.operand)
			target := base + uint16(c.Y)
			c.addr = (base & 0xFF00) | (target & 0x00FF)
			c.ptr = target
		})
		c.push(func(c *CPU) { c.bus.Read(c.addr); c.addr = c.ptr })
	}
}

func (c *CPU) pushAbsoluteIndexedAddr(index uint8) {
	c.push(func(c *CPU) { c.fetchedAddrLo = c.bus.Read(c.PC); c.PC++ })
	c.push(func(c *CPU) {
		hi := c.bus.Read(c.PC)
		c.PC++
		base := uint16(hi)<<8 | uint16(c.fetchedAddrLo)
		target := base + uint16(index)
		c.addr = (base & 0xFF00) | (target & 0x00FF)
		c.ptr = target
	})
	c.push(func(c *CPU) { c.bus.Read(c.addr); c.addr = c.ptr })
}
